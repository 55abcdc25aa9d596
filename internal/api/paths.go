package api

const (
	PathRegister     = "/api/auth/register"
	PathLogin        = "/api/auth/login"
	PathRefreshToken = "/api/auth/refresh-token"
	PathLogout       = "/api/auth/logout"

	PathProfile = "/api/user/profile"
	PathHealth  = "/api/health"

	PathOffers        = "/api/offers"
	PathCourseLessons = "/api/course-lessons"
	PathTestQuestions = "/api/tests/questions"
	PathBodyUpload    = "/api/body-analysis/upload"
)

// UploadFormField is the multipart field carrying the uploaded file.
const UploadFormField = "file"
