package httpx

import (
	"net/http"
	"strings"

	"github.com/target/serverboard/internal/core"
	"github.com/target/serverboard/internal/domain/model"
	"github.com/target/serverboard/internal/domain/serverview"
	apperrors "github.com/target/serverboard/internal/errors"
)

const (
	msgGamesFailed      = "게임 목록을 불러오지 못했습니다."
	msgGameAdded        = "게임이 추가되었습니다"
	msgGameRemoved      = "게임이 삭제되었습니다"
	msgGameRemoveFailed = "게임 삭제 실패"
)

// gamesData builds the widget data for the given filter. A rejected filter is
// reported as a field error on the filter input.
func (h *UIHandlers) gamesData(r *http.Request, serverID int64, filter string) *TemplateDataBuilder {
	data := NewTemplateData(r, PageMeta{}).
		With("ServerID", serverID).
		With("Filter", filter).
		With("Games", []*model.Game{}).
		With("Form", map[string]string{})

	games, err := h.Games.List(r.Context(), model.GameListOptions{ServerID: serverID, Filter: filter})
	switch {
	case err == nil:
		return data.With("Games", games)
	case apperrors.GetField(err) == "filter":
		return data.WithFieldErrors(map[string]string{"filter": userMessage(err)})
	default:
		h.logger().WarnContext(r.Context(), "games load failed", "server_id", serverID, "error", err)
		return data.WithError(msgGamesFailed)
	}
}

// ServerGames renders the game management widget. ?filter= takes a JMESPath expression.
func (h *UIHandlers) ServerGames(w http.ResponseWriter, r *http.Request) {
	id, ok := serverview.ParseID(r.PathValue("id"))
	if !ok {
		h.renderInvalid(w, r)
		return
	}
	filter := strings.TrimSpace(r.URL.Query().Get("filter"))
	h.renderFragment(w, r, FragmentOpts{Name: "server-games", Data: h.gamesData(r, id, filter).Build()})
}

// ServerGameAdd adds a game and re-renders the widget.
func (h *UIHandlers) ServerGameAdd(w http.ResponseWriter, r *http.Request) {
	id, ok := serverview.ParseID(r.PathValue("id"))
	if !ok {
		h.renderInvalid(w, r)
		return
	}

	form := map[string]string{
		"name":        strings.TrimSpace(r.FormValue("name")),
		"min_players": strings.TrimSpace(r.FormValue("min_players")),
		"max_players": strings.TrimSpace(r.FormValue("max_players")),
	}
	_, err := h.Games.Add(r.Context(), model.CreateGameRequest{
		ServerID:   id,
		Name:       form["name"],
		MinPlayers: atoiOr(form["min_players"], 0),
		MaxPlayers: atoiOr(form["max_players"], 0),
	})
	if err != nil {
		h.logger().InfoContext(r.Context(), "game add rejected", "server_id", id, "error", err)
		existing := h.gamesData(r, id, "").Build()
		RenderError(ErrorOpts{
			W:        w,
			R:        r,
			Err:      err,
			Renderer: h.fragmentRenderer("server-games"),
			Data: map[string]any{
				"ServerID": id,
				"Games":    existing["Games"],
				"Filter":   "",
				"Form":     form,
			},
			ShowToast: true,
		})
		return
	}

	triggerToast(w, toast{Message: msgGameAdded, Type: toastSuccess})
	h.renderFragment(w, r, FragmentOpts{Name: "server-games", Data: h.gamesData(r, id, "").Build()})
}

// ServerGameRemove deletes a game and re-renders the widget.
func (h *UIHandlers) ServerGameRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := serverview.ParseID(r.PathValue("id"))
	gameID := strings.TrimSpace(r.PathValue("gameID"))
	if !ok || gameID == "" {
		h.renderInvalid(w, r)
		return
	}

	if err := h.Games.Remove(r.Context(), core.ServerItemKey{ServerID: id, ID: gameID}); err != nil {
		h.logger().WarnContext(r.Context(), "game remove failed", "server_id", id, "game_id", gameID, "error", err)
		triggerToast(w, toast{Message: msgGameRemoveFailed, Description: userMessage(err), Type: toastError})
	} else {
		triggerToast(w, toast{Message: msgGameRemoved, Type: toastSuccess})
	}
	h.renderFragment(w, r, FragmentOpts{Name: "server-games", Data: h.gamesData(r, id, "").Build()})
}
