// Package handler implements the HTTP API: account registration and
// login, project CRUD, webhook event intake and metrics browsing.
//
// Handlers are thin glue over the store and the synchronization engine;
// request validation and error-to-status mapping live here, semantics
// live below.
package handler

import (
	"github.com/sirupsen/logrus"

	"github.com/codemetry/codemetry/internal/auth"
	"github.com/codemetry/codemetry/internal/db"
	"github.com/codemetry/codemetry/internal/gh"
	"github.com/codemetry/codemetry/internal/logging"
	"github.com/codemetry/codemetry/internal/syncer"
)

// Handler bundles the API's dependencies
type Handler struct {
	store  db.Store
	engine *syncer.Engine
	client gh.Client
	tokens *auth.TokenService
	hasher *auth.PasswordHasher
	log    *logrus.Entry
}

// New creates the API handler
func New(store db.Store, engine *syncer.Engine, client gh.Client, tokens *auth.TokenService, hasher *auth.PasswordHasher, logger *logrus.Logger) *Handler {
	return &Handler{
		store:  store,
		engine: engine,
		client: client,
		tokens: tokens,
		hasher: hasher,
		log:    logging.WithComponent(logger, "handler"),
	}
}
