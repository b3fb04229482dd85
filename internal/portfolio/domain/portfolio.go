package domain

// Portfolio is the public aggregate for one user. Absent collections are
// empty, never null.
type Portfolio struct {
	User           PublicUser `json:"user"`
	Introduction   Document   `json:"introduction"`
	Educations     []Document `json:"educations"`
	Experiences    []Document `json:"experiences"`
	Skills         []Document `json:"skills"`
	Projects       []Document `json:"projects"`
	Certifications []Document `json:"certifications"`
	SocialLinks    []Document `json:"socialLinks"`
	Testimonials   []Document `json:"testimonials"`
}

// NewPortfolio returns an aggregate with every list initialised.
func NewPortfolio(u PublicUser) Portfolio {
	return Portfolio{
		User:           u,
		Educations:     []Document{},
		Experiences:    []Document{},
		Skills:         []Document{},
		Projects:       []Document{},
		Certifications: []Document{},
		SocialLinks:    []Document{},
		Testimonials:   []Document{},
	}
}
