package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/bloglist-backend/internal/platform/pointers"
)

type requestDataKey struct{}

// RequestData identifies the authenticated caller, if any.
type RequestData struct {
	UserID      uuid.UUID
	Username    string
	TokenString string
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

// CurrentUserID returns the caller's id, or nil when the request is anonymous.
func CurrentUserID(ctx context.Context) *uuid.UUID {
	rd := GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil
	}
	return pointers.Ptr(rd.UserID)
}
