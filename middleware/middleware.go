package middleware

const (
	KeyJwtSessionCookieName = "jwt_session"
)
