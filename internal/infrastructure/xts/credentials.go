package xts

import "context"

type credentialsKey struct{}

type credentials struct {
	user     string
	password string
}

// WithCredentials returns a context whose calls authenticate as user.
func WithCredentials(ctx context.Context, user, password string) context.Context {
	return context.WithValue(ctx, credentialsKey{}, credentials{user: user, password: password})
}

func credentialsFrom(ctx context.Context) (credentials, bool) {
	c, ok := ctx.Value(credentialsKey{}).(credentials)
	return c, ok && c.user != ""
}
