package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/melih/lighthouse-tray/internal/core/domain"
	"github.com/melih/lighthouse-tray/internal/core/ports"
)

// DefaultToggleWait is how long a toggle request waits for the action result
// before answering 202 Accepted.
const DefaultToggleWait = 35 * time.Second

type ContainerHandler struct {
	snapshots ports.SnapshotSource
	toggler   ports.Toggler
	wait      time.Duration
}

func NewContainerHandler(snapshots ports.SnapshotSource, toggler ports.Toggler, wait time.Duration) *ContainerHandler {
	if wait <= 0 {
		wait = DefaultToggleWait
	}
	return &ContainerHandler{snapshots: snapshots, toggler: toggler, wait: wait}
}

// SnapshotResponse is the JSON form of domain.Snapshot.
type SnapshotResponse struct {
	Containers []domain.ContainerSummary `json:"containers"`
	Degraded   bool                      `json:"degraded"`
	Error      string                    `json:"error,omitempty"`
	TakenAt    time.Time                 `json:"taken_at"`
}

func (h *ContainerHandler) ListContainers(c *fiber.Ctx) error {
	snap := h.snapshots.Latest()
	resp := SnapshotResponse{
		Containers: snap.Containers,
		Degraded:   snap.Degraded(),
		TakenAt:    snap.TakenAt,
	}
	if resp.Containers == nil {
		resp.Containers = []domain.ContainerSummary{}
	}
	if snap.Err != nil {
		resp.Error = snap.Err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}

func (h *ContainerHandler) GetContainer(c *fiber.Ctx) error {
	id := c.Params("id")
	snap := h.snapshots.Latest()
	if snap.Err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": snap.Err.Error(),
		})
	}
	summary, ok := snap.Find(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Container not found",
		})
	}
	return c.JSON(summary)
}

func (h *ContainerHandler) ToggleContainer(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Container ID is required",
		})
	}

	results, err := h.toggler.Toggle(id)
	if err != nil {
		if errors.Is(err, domain.ErrActionInFlight) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	timer := time.NewTimer(h.wait)
	defer timer.Stop()

	select {
	case res := <-results:
		return c.Status(statusFor(res)).JSON(res)
	case <-timer.C:
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "pending"})
	}
}

func statusFor(res domain.ActionResult) int {
	switch {
	case res.Succeeded():
		return fiber.StatusOK
	case errors.Is(res.Err, domain.ErrContainerNotFound):
		return fiber.StatusNotFound
	case errors.Is(res.Err, domain.ErrRuntimeUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusBadGateway
	}
}

func Health(c *fiber.Ctx) error {
	return c.SendString("ok")
}
