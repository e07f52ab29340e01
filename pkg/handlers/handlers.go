// Package handlers assembles the HTTP surface from the per-domain handler
// packages.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/nftarena/battle-coordinator/pkg/chain"
	"github.com/nftarena/battle-coordinator/pkg/handlers/accounts"
	"github.com/nftarena/battle-coordinator/pkg/handlers/battles"
	"github.com/nftarena/battle-coordinator/pkg/handlers/credits"
	"github.com/nftarena/battle-coordinator/pkg/handlers/lobbies"
	"github.com/nftarena/battle-coordinator/pkg/nft"
	"github.com/nftarena/battle-coordinator/pkg/storage"
	"github.com/nftarena/battle-coordinator/pkg/websockets"
)

// Api groups the per-domain handlers behind one router.
type Api struct {
	Accounts *accounts.AccountsHandler
	Lobbies  *lobbies.LobbiesHandler
	Battles  *battles.BattlesHandler
	Credits  *credits.CreditsHandler
}

// NewApi wires the per-domain handlers from shared dependencies.
func NewApi(store storage.ApiStore, stats nft.StatProvider, chainClient chain.Client, publisher websockets.Publisher) *Api {
	return &Api{
		Accounts: accounts.NewAccountsHandler(store),
		Lobbies:  lobbies.NewLobbiesHandler(store, stats, chainClient, publisher),
		Battles:  battles.NewBattlesHandler(store, publisher),
		Credits:  credits.NewCreditsHandler(store),
	}
}

// Mount attaches every route to the router.
func (a *Api) Mount(r chi.Router) {
	r.Route("/accounts", func(r chi.Router) {
		r.Post("/", a.Accounts.CreateAccount)
		r.Get("/resolve/{secondary}", withStringParam("secondary", a.Accounts.ResolveSecondary))
		r.Get("/{address}", withStringParam("address", a.Accounts.GetAccountByAddress))
		r.Put("/{address}/link", withStringParam("address", a.Accounts.LinkAccount))
	})

	r.Route("/lobbies", func(r chi.Router) {
		r.Post("/", a.Lobbies.CreateLobby)
		r.Get("/", a.Lobbies.ListOpenLobbies)
		r.Get("/{code}", withStringParam("code", a.Lobbies.GetLobbyByCode))
		r.Post("/{code}/join", withStringParam("code", a.Lobbies.JoinLobby))
		r.Post("/{code}/select", withStringParam("code", a.Lobbies.SelectNFT))
		r.Post("/{code}/cancel", withStringParam("code", a.Lobbies.CancelLobby))
		r.Post("/{code}/promote", withStringParam("code", a.Lobbies.PromoteLobby))
	})

	r.Route("/battles/{battleId}", func(r chi.Router) {
		r.Get("/", withBattleID(a.Battles.GetBattleById))
		r.Post("/turns", withBattleID(a.Battles.BeginTurn))
		r.Post("/turns/commit", withBattleID(a.Battles.CommitTurn))
		r.Post("/turns/revert", withBattleID(a.Battles.RevertTurn))
	})

	r.Get("/players/{address}/battles", withStringParam("address", a.Battles.ListBattlesByPlayer))

	r.Get("/credits", a.Credits.ListCreditEntries)
}

func withStringParam(name string, handler func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handler(w, r, chi.URLParam(r, name))
	}
}

// withBattleID binds the battleId path parameter as a UUID so malformed ids
// are rejected before any storage call.
func withBattleID(handler func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var battleID openapi_types.UUID
		err := runtime.BindStyledParameterWithOptions("simple", "battleId", chi.URLParam(r, "battleId"), &battleID, runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid battle id: %v", err), http.StatusBadRequest)
			return
		}
		handler(w, r, battleID.String())
	}
}
