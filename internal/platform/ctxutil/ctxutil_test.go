package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestDataRoundTrip(t *testing.T) {
	id := uuid.New()
	ctx := WithRequestData(context.Background(), &RequestData{UserID: id, Email: "a@b.c"})
	assert.Equal(t, id, OwnerID(ctx))
	assert.Equal(t, "a@b.c", GetRequestData(ctx).Email)
	assert.Equal(t, uuid.Nil, OwnerID(context.Background()))
}

func TestTraceData(t *testing.T) {
	ctx := WithTraceData(context.Background(), &TraceData{TraceID: "t", RequestID: "r"})
	assert.Equal(t, "t", GetTraceData(ctx).TraceID)
	assert.Nil(t, GetTraceData(context.Background()))
}
