package httpapi

import (
	"errors"
	"time"

	"github.com/Gearhartlove/pregel-ex/core"
	"github.com/Gearhartlove/pregel-ex/payload"
	"github.com/Gearhartlove/pregel-ex/registry"
	"github.com/gofiber/fiber/v3"
)

// New mounts the introspection routes on a fresh *fiber.App backed by r.
func New(r *registry.Registry) *fiber.App {
	app := fiber.New()

	app.Get("/graphs", func(c fiber.Ctx) error {
		graphs := r.ListGraphs()
		out := make([]fiber.Map, 0, len(graphs))
		for _, g := range graphs {
			out = append(out, graphSummary(g))
		}
		return c.JSON(out)
	})

	app.Get("/graphs/:id", func(c fiber.Ctx) error {
		graphID := c.Params("id")
		vertices, err := r.ListVertices(graphID)
		if err != nil {
			return notFoundOrError(c, err)
		}
		edges, err := r.ListEdges(graphID)
		if err != nil {
			return notFoundOrError(c, err)
		}
		return c.JSON(fiber.Map{
			"graph_id":     graphID,
			"vertex_count": len(vertices),
			"edge_count":   len(edges),
		})
	})

	app.Get("/graphs/:id/vertices/:vid", func(c fiber.Ctx) error {
		state, err := r.GetVertexState(c.Params("id"), c.Params("vid"))
		if err != nil {
			return notFoundOrError(c, err)
		}
		return c.JSON(vertexStateJSON(state))
	})

	app.Get("/graphs/:id/final", func(c fiber.Ctx) error {
		state, err := r.GetFinalValue(c.Params("id"))
		if err != nil {
			return notFoundOrError(c, err)
		}
		return c.JSON(vertexStateJSON(state))
	})

	app.Post("/graphs/:id/run", func(c fiber.Ctx) error {
		var body struct {
			MaxSupersteps uint64 `json:"max_supersteps"`
			TimeoutMS     uint64 `json:"timeout_ms"`
		}
		// A missing or empty body is fine; the engine's own defaults apply.
		_ = c.Bind().JSON(&body)

		var opts []core.RunOption
		if body.MaxSupersteps > 0 {
			opts = append(opts, core.MaxSupersteps(body.MaxSupersteps))
		}
		if body.TimeoutMS > 0 {
			opts = append(opts, core.Timeout(time.Duration(body.TimeoutMS)*time.Millisecond))
		}

		log, err := r.Run(c.Params("id"), opts...)
		var bf *core.BoundedFailureError
		switch {
		case errors.Is(err, registry.ErrGraphNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.As(err, &bf):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": bf.Error(),
				"kind":  bf.Kind,
				"round": bf.Round,
			})
		case err != nil:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"rounds": log.Rounds, "delivery_warnings": len(log.DeliveryWarnings)})
	})

	return app
}

func graphSummary(g *core.Graph) fiber.Map {
	return fiber.Map{
		"graph_id":     g.ID(),
		"name":         g.Name(),
		"vertex_count": g.VertexCount(),
	}
}

func vertexStateJSON(s core.VertexState) fiber.Map {
	return fiber.Map{
		"graph_id":  s.GraphID,
		"vertex_id": s.ID,
		"name":      s.Name,
		"type":      s.Type.String(),
		"value":     valueToJSON(s.Value),
		"active":    s.Active,
		"superstep": s.Superstep,
	}
}

// valueToJSON renders a payload.Value as a plain JSON-marshalable tree.
func valueToJSON(v payload.Value) any {
	switch v.Kind() {
	case payload.KindNumber:
		n, _ := v.Number()
		return n
	case payload.KindMap:
		m, _ := v.Map()
		out := make(map[string]any, len(m))
		for k, sub := range m {
			out[k] = valueToJSON(sub)
		}
		return out
	case payload.KindList:
		items, _ := v.List()
		out := make([]any, len(items))
		for i, sub := range items {
			out[i] = valueToJSON(sub)
		}
		return out
	case payload.KindOpaque:
		o, _ := v.Opaque()
		return o
	default:
		return nil
	}
}

func notFoundOrError(c fiber.Ctx, err error) error {
	if errors.Is(err, registry.ErrGraphNotFound) || errors.Is(err, core.ErrVertexNotFound) || errors.Is(err, core.ErrFinalVertexNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
