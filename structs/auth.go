package structs

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name            string `json:"name"`
	GithubProfile   string `json:"githubProfile"`
	LinkedInProfile string `json:"linkedInProfile"`
	PortfolioURL    string `json:"portfolioUrl"`
	Password        string `json:"password"`
}
