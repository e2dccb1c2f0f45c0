package ctxutil

import "context"

type requestDataKey struct{}

// RequestData is attached by the auth middleware once a bearer token resolves.
type RequestData struct {
	TokenString string
	UserID      uint
	Username    string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}
