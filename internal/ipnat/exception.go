// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package ipnat

import (
	"fmt"

	"github.com/hinerm/hIPNAT/internal/host"
	"github.com/hinerm/hIPNAT/internal/info"
)

const (
	unexpectedErrorMessage = logPrefix + "unexpected error"
	reportTemplate         = "%s\n\nIncident %s. Please report it at %s/issues including the %s version."
)

var _ host.ExceptionHandler = &exceptionHandler{}

// exceptionHandler reports errors with the details needed to file an issue.
type exceptionHandler struct {
	suite *Suite
}

func (h *exceptionHandler) Handle(err error) {
	incidentID := h.suite.newIncidentID()
	version := h.suite.metadata.Version()

	h.suite.log().Error(unexpectedErrorMessage,
		"error", err.Error(),
		"incident", incidentID,
		"version", version,
		"buildDate", h.suite.metadata.BuildDate(),
		"docUrl", info.DocURL,
		"srcUrl", info.SrcURL,
	)

	h.suite.app.ShowError(h.suite.VersionString(), fmt.Sprintf(reportTemplate, err.Error(), incidentID, info.SrcURL, info.AbbrevName))
}
