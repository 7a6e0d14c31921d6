package middleware

import "context"

// subjectKey is the key under which the authenticated token subject is stored.
const subjectKey = contextKey("subject")

// GetSubjectFromContext retrieves the authenticated token subject. It returns
// false when authentication is off or the request was not authenticated.
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok && subject != ""
}
