package redis

import (
	"fmt"

	"github.com/lcabral/guestportal/internal/model"
)

// Key prefix for all portal data
const keyPrefix = "guestportal"

// flowKey returns the Redis key for a login flow
func flowKey(token model.FlowToken) string {
	return fmt.Sprintf("%s:flow:%s", keyPrefix, token)
}
