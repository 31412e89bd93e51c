package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/minter/v1")

	r.Get("/status", h.GetStatus)
	r.Get("/drops", h.GetDrops)
	r.Get("/supply", h.GetSupply)
	r.Get("/holders/:address", h.GetHolder)
	r.Get("/tokens/:id", h.GetToken)
	r.Get("/royalty", h.GetRoyalty)
	r.Get("/treasury", h.GetTreasury)
	r.Get("/events", h.GetEvents)

	r.Post("/initialize", h.Initialize)
	r.Post("/mint", h.Mint)
	r.Post("/drops/:index", h.UpdateDrop)
	r.Post("/drops/:index/price", h.SetDropPrice)
	r.Post("/remediate", h.Remediate)
	r.Post("/royalty", h.SetRoyalty)
	r.Post("/withdraw", h.Withdraw)
	r.Post("/withdraw-all", h.WithdrawAll)
	r.Post("/approvals", h.Approve)
	r.Post("/transfers", h.Transfer)
	return nil
}
