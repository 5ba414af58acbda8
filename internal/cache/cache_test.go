package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	Value string `json:"value"`
}

func TestNilClientIsEmptyCache(t *testing.T) {
	c := New("", "", 0)
	assert.Nil(t, c)

	ctx := context.Background()
	c.SetJSON(ctx, "k", payload{Value: "v"}, time.Minute)

	var got payload
	assert.False(t, c.GetJSON(ctx, "k", &got))
	assert.NoError(t, c.Close())
}

func TestUnreachableRedisFailsSafe(t *testing.T) {
	// nothing listens on port 1
	c := New("127.0.0.1:1", "", 0)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c.SetJSON(ctx, "k", payload{Value: "v"}, time.Minute)

	var got payload
	assert.False(t, c.GetJSON(ctx, "k", &got))
}
