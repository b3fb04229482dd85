package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/folio/internal/portfolio/github"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

type GitHubHandler struct {
	Client *github.Client
}

// HandleUser proxies a GitHub profile.
//
//	@Summary		GitHub profile
//	@Description	Passes through GET /users/{username} of the GitHub REST API. Status and body are forwarded unchanged.
//	@Tags			GitHub
//	@Produce		json
//	@Param			username	path	string	true	"GitHub login"
//	@Success		200			"GitHub user object"
//	@Failure		400			{object}	httpx.ErrorEnvelope	"Invalid login"
//	@Failure		502			{object}	httpx.ErrorEnvelope	"GitHub unreachable"
//	@Router			/github/{username} [get].
func (h *GitHubHandler) HandleUser(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Client.User(r.Context(), r.PathValue("username"))
	h.forward(w, r, resp, err)
}

// HandleRepos proxies a user's public repositories.
//
//	@Summary	GitHub repositories
//	@Tags		GitHub
//	@Produce	json
//	@Param		username	path	string	true	"GitHub login"
//	@Param		page		query	int		false	"Page"
//	@Param		per_page	query	int		false	"Page size"
//	@Success	200			"Array of GitHub repository objects"
//	@Failure	400			{object}	httpx.ErrorEnvelope	"Invalid login"
//	@Failure	502			{object}	httpx.ErrorEnvelope	"GitHub unreachable"
//	@Router		/github/{username}/repos [get].
func (h *GitHubHandler) HandleRepos(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Client.Repos(r.Context(), r.PathValue("username"), r.URL.Query())
	h.forward(w, r, resp, err)
}

func (h *GitHubHandler) forward(w http.ResponseWriter, r *http.Request, resp github.Response, err error) {
	if errors.Is(err, github.ErrInvalidUsername) {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid GitHub username")
		return
	}
	if err != nil {
		slogx.FromContext(r.Context()).Warn("github proxy failed", "error", err)
		httpx.WriteError(w, http.StatusBadGateway, "GitHub is unreachable")
		return
	}

	ct := resp.ContentType
	if ct == "" {
		ct = "application/json"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", strconv.Itoa(len(resp.Body)))
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
}
