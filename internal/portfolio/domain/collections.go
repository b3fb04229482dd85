package domain

var (
	Introductions = Schema{
		Collection:   "introductions",
		Singular:     "introduction",
		AggregateKey: "introduction",
		Fields: []Field{
			{Name: "name", Kind: KindString, Required: true},
			{Name: "headline", Kind: KindString, Required: true},
			{Name: "bio", Kind: KindText, Required: true},
			{Name: "location", Kind: KindString},
			{Name: "email", Kind: KindString},
			{Name: "phone", Kind: KindString},
			{Name: "profileImage", Kind: KindMedia},
			{Name: "resume", Kind: KindMedia},
		},
		OnePerOwner: true,
	}

	Educations = Schema{
		Collection:   "educations",
		Singular:     "education",
		AggregateKey: "educations",
		Fields: []Field{
			{Name: "institution", Kind: KindString, Required: true},
			{Name: "degree", Kind: KindString, Required: true},
			{Name: "fieldOfStudy", Kind: KindString, Required: true},
			{Name: "startDate", Kind: KindDate, Required: true},
			{Name: "endDate", Kind: KindDate},
			{Name: "grade", Kind: KindString},
			{Name: "description", Kind: KindText},
			{Name: "logo", Kind: KindMedia},
		},
		SortBy: "startDate",
	}

	Experiences = Schema{
		Collection:   "experiences",
		Singular:     "experience",
		AggregateKey: "experiences",
		Fields: []Field{
			{Name: "company", Kind: KindString, Required: true},
			{Name: "position", Kind: KindString, Required: true},
			{Name: "startDate", Kind: KindDate, Required: true},
			{Name: "location", Kind: KindString},
			{Name: "employmentType", Kind: KindString},
			{Name: "endDate", Kind: KindDate},
			{Name: "current", Kind: KindBool},
			{Name: "description", Kind: KindText},
			{Name: "technologies", Kind: KindList},
			{Name: "companyLogo", Kind: KindMedia},
		},
		SortBy: "startDate",
	}

	Skills = Schema{
		Collection:   "skills",
		Singular:     "skill",
		AggregateKey: "skills",
		Fields: []Field{
			{Name: "name", Kind: KindString, Required: true},
			{Name: "category", Kind: KindString, Required: true},
			{Name: "level", Kind: KindString},
			{Name: "yearsOfExperience", Kind: KindInt},
			{Name: "icon", Kind: KindMedia},
		},
	}

	Projects = Schema{
		Collection:   "projects",
		Singular:     "project",
		AggregateKey: "projects",
		Fields: []Field{
			{Name: "title", Kind: KindString, Required: true},
			{Name: "slug", Kind: KindString, Required: true},
			{Name: "description", Kind: KindText, Required: true},
			{Name: "techStack", Kind: KindList},
			{Name: "githubUrl", Kind: KindURL},
			{Name: "liveUrl", Kind: KindURL},
			{Name: "featured", Kind: KindBool},
			{Name: "thumbnail", Kind: KindMedia},
		},
		UniqueField: "slug",
	}

	Certifications = Schema{
		Collection:   "certifications",
		Singular:     "certification",
		AggregateKey: "certifications",
		Fields: []Field{
			{Name: "title", Kind: KindString, Required: true},
			{Name: "issuer", Kind: KindString, Required: true},
			{Name: "issueDate", Kind: KindDate, Required: true},
			{Name: "expiryDate", Kind: KindDate},
			{Name: "credentialId", Kind: KindString},
			{Name: "credentialUrl", Kind: KindURL},
			{Name: "badge", Kind: KindMedia},
		},
		SortBy: "issueDate",
	}

	SocialLinks = Schema{
		Collection:   "social-links",
		Singular:     "socialLink",
		AggregateKey: "socialLinks",
		Fields: []Field{
			{Name: "platform", Kind: KindString, Required: true},
			{Name: "url", Kind: KindURL, Required: true},
			{Name: "username", Kind: KindString},
			{Name: "icon", Kind: KindMedia},
		},
	}

	Testimonials = Schema{
		Collection:   "testimonials",
		Singular:     "testimonial",
		AggregateKey: "testimonials",
		Fields: []Field{
			{Name: "name", Kind: KindString, Required: true},
			{Name: "message", Kind: KindText, Required: true},
			{Name: "designation", Kind: KindString},
			{Name: "company", Kind: KindString},
			{Name: "rating", Kind: KindInt},
			{Name: "avatar", Kind: KindMedia},
		},
		OpenCreate: true,
	}
)

// Collections is every portfolio schema in aggregate order.
var Collections = []Schema{
	Introductions,
	Educations,
	Experiences,
	Skills,
	Projects,
	Certifications,
	SocialLinks,
	Testimonials,
}

// LookupSchema finds a schema by its collection name.
func LookupSchema(collection string) (Schema, bool) {
	for _, s := range Collections {
		if s.Collection == collection {
			return s, true
		}
	}
	return Schema{}, false
}
