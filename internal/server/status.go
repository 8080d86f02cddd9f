// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hinerm/hIPNAT/internal/info"
)

type statusResponse struct {
	Status  string `json:"status"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

func statusRoutes(app *fiber.App, metadata *info.Metadata) {
	status := func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(statusResponse{
			Status:  "OK",
			Name:    info.AbbrevName,
			Version: metadata.Version(),
		})
	}

	app.Get(statusPathPrefix+"healthz", status)
	app.Get(statusPathPrefix+"ready", status)
	app.Get(statusPathPrefix+"version", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(metadata.Build())
	})
}
