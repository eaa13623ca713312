package redis

import (
	_ "embed"

	goredis "github.com/redis/go-redis/v9"
)

var (
	//go:embed scripts/register_payment.lua
	registerPaymentSource string

	//go:embed scripts/update_payment_on_complete.lua
	updatePaymentOnCompleteSource string
)

// Replies of the update script.
const (
	replyUpdated   = "UPDATED"
	replyUnchanged = "UNCHANGED"
	replyReplaced  = "REPLACED"
	replyNotFound  = "NOT_FOUND"
)

func newRegisterPaymentScript() *goredis.Script {
	return goredis.NewScript(registerPaymentSource)
}

func newUpdatePaymentOnCompleteScript() *goredis.Script {
	return goredis.NewScript(updatePaymentOnCompleteSource)
}
