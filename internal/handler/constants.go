package handler

// Route paths.
const (
	RouteRoot      = "/"
	RouteAbout     = "/about"
	RouteSkills    = "/skills"
	RouteContact   = "/contact"
	RouteProjects  = "/projects"
	RouteLogin     = "/login"
	RouteRegister  = "/register"
	RouteLogout    = "/logout"
	RouteDashboard = "/dashboard"
	RouteMessages  = "/messages"

	RouteAddProject        = "/add_project"
	RouteDeleteProjectName = "/delete_project/{name}"
	RouteDeleteProjectID   = "/delete_project/id/{id}"
	RouteDeleteMessage     = "/delete_message/{id}"
)
