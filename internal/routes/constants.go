package routes

var (
	SignupDurationSecondsBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	LoginDurationSecondsBuckets  = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10}
)

const (
	// API route constants
	HomeRoute      = "/"
	DashboardRoute = "/dashboard"
	LoginRoute     = "/login"
	SignupRoute    = "/signup"
	LogoutRoute    = "/logout"
	DownloadRoute  = "/download"
	DeleteRoute    = "/delete"
	MetricsRoute   = "/metrics"

	// Content-Type constants
	ContentType         = "Content-Type"
	ContentTypeJson     = "application/json"
	ContentTypeDownload = "application/json; charset=utf-8"
	ContentDisposition  = "Content-Disposition"
	DownloadAttachment  = "attachment; filename=userinfo.txt"

	// message constants
	MsgSignedInRequired   = "You have to be signed in to do that!"
	MsgBadCredentials     = "Please check your credentials and try again!"
	MsgUsernameTaken      = "There's already an user with that username!"
	MsgMissingCredentials = "Please provide both a username and a password!"
	MsgServerError        = "Something went wrong on our end. Please try again later!"

	// metrics constants
	SignupRequestsTotal       = "signup_requests_total"
	SignupRequestsTotalHelp   = "Total number of signup requests received"
	SignupSuccessTotal        = "signup_success_total"
	SignupSuccessTotalHelp    = "Total number of successful signup requests"
	SignupErrorsTotal         = "signup_errors_total"
	SignupErrorsTotalHelp     = "Total number of errors during signup requests"
	SignupDurationSeconds     = "signup_duration_seconds"
	SignupDurationSecondsHelp = "Duration of signup requests in seconds"
	LoginRequestsTotal        = "login_requests_total"
	LoginRequestsTotalHelp    = "Total number of login requests received"
	LoginSuccessTotal         = "login_success_total"
	LoginSuccessTotalHelp     = "Total number of successful login requests"
	LoginFailedTotal          = "login_failed_total"
	LoginFailedTotalHelp      = "Total number of failed login requests"
	LoginDurationSeconds      = "login_duration_seconds"
	LoginDurationSecondsHelp  = "Duration of login requests in seconds"
	DownloadRequestsTotal     = "download_requests_total"
	DownloadRequestsTotalHelp = "Total number of account download requests"
	DeleteRequestsTotal       = "delete_requests_total"
	DeleteRequestsTotalHelp   = "Total number of account delete requests"
	DeleteSuccessTotal        = "delete_success_total"
	DeleteSuccessTotalHelp    = "Total number of successfully deleted accounts"
	StoreErrorsTotal          = "store_errors_total"
	StoreErrorsTotalHelp      = "Total number of login store failures surfaced to clients"
)
