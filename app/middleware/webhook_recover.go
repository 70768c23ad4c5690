package middleware

import (
	"log"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
)

// WebhookRecover turns a panic in a gateway webhook into the normal success reply.
// The gateway retries or alerts on anything but 200.
func WebhookRecover(reply fiber.Handler) fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf(`{"level":"error","request_id":"%v","event":"webhook_panic","path":"%s","error":"%v"}`, c.Locals("requestid"), c.Path(), r)
				log.Printf("%s", debug.Stack())
				err = reply(c)
			}
		}()
		return c.Next()
	}
}
