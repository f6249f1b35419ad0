package handlers

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	JobHandler          *JobHandler
	ProfessionalHandler *ProfessionalHandler
	AdminHandler        *AdminHandler
	LocationHandler     *LocationHandler
}
