package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/totegamma/todolist/internal/domain"
	"github.com/totegamma/todolist/internal/present/rest/presenter"
	"github.com/totegamma/todolist/internal/usecase"
)

const listPath = "/items"

// EventStream delivers item events for the realtime socket.
type EventStream interface {
	Realtime(ctx context.Context, output chan<- domain.ItemEvent) error
}

// HealthCheck reports whether the backing store is reachable.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	item     *usecase.ItemUsecase
	category *usecase.CategoryUsecase
	stream   EventStream
	health   HealthCheck
}

func NewHandler(
	item *usecase.ItemUsecase,
	category *usecase.CategoryUsecase,
	stream EventStream,
	health HealthCheck,
) *Handler {
	return &Handler{
		item:     item,
		category: category,
		stream:   stream,
		health:   health,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.handleRoot)
	e.GET("/healthz", h.handleHealth)
	e.GET("/categories", h.handleCategories)
	e.GET("/realtime", h.handleRealtime)

	e.GET("/items", h.handleList)
	e.GET("/items/create", h.handleCreateForm)
	e.POST("/items/create", h.handleCreate)
	e.POST("/items/categories/delete", h.handleDeleteCategoryLink)
	e.GET("/items/:id", h.handleDetails)
	e.GET("/items/:id/edit", h.handleEditForm)
	e.POST("/items/:id/edit", h.handleEdit)
	e.GET("/items/:id/categories", h.handleAddCategoryForm)
	e.POST("/items/:id/categories", h.handleAddCategory)
	e.GET("/items/:id/delete", h.handleDeleteForm)
	e.POST("/items/:id/delete", h.handleDelete)
}

// itemRequest is the body of create, edit and add-category submissions.
// categoryId 0 means no category was picked.
type itemRequest struct {
	Description string `json:"description" form:"description"`
	Done        bool   `json:"done" form:"done"`
	CategoryID  int64  `json:"categoryId" form:"categoryId"`
}

type joinRequest struct {
	JoinID int64 `json:"joinId" form:"joinId"`
}

func (h *Handler) handleRoot(c echo.Context) error {
	return presenter.SeeOther(c, listPath)
}

func (h *Handler) handleHealth(c echo.Context) error {
	if h.health != nil {
		if err := h.health(c.Request().Context()); err != nil {
			slog.ErrorContext(
				c.Request().Context(), "health check failed",
				slog.String("error", err.Error()),
				slog.String("module", "rest"),
			)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
		}
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleCategories(c echo.Context) error {
	options, err := h.category.Options(c.Request().Context())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, options)
}

func (h *Handler) handleList(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.item.List(ctx, c.QueryParam("searchString"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OKWithETag(c, items)
}

func (h *Handler) handleCreateForm(c echo.Context) error {
	form, err := h.item.CreateForm(c.Request().Context())
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, form)
}

func (h *Handler) handleCreate(c echo.Context) error {
	ctx := c.Request().Context()

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	item := domain.Item{Description: req.Description, Done: req.Done}
	if _, err := h.item.Create(ctx, item, req.CategoryID); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.SeeOther(c, listPath)
}

func (h *Handler) handleDetails(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	details, err := h.item.GetDetails(c.Request().Context(), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, details)
}

func (h *Handler) handleEditForm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	form, err := h.item.GetForEdit(c.Request().Context(), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, form)
}

func (h *Handler) handleEdit(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	item := domain.Item{ID: id, Description: req.Description, Done: req.Done}
	if err := h.item.Edit(ctx, item, req.CategoryID); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.SeeOther(c, listPath)
}

func (h *Handler) handleAddCategoryForm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	form, err := h.item.AddCategoryForm(c.Request().Context(), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, form)
}

func (h *Handler) handleAddCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	if err := h.item.AddCategory(ctx, domain.Item{ID: id}, req.CategoryID); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.SeeOther(c, listPath)
}

func (h *Handler) handleDeleteForm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	item, err := h.item.GetForDelete(c.Request().Context(), id)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, item)
}

func (h *Handler) handleDelete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	if err := h.item.DeleteConfirmed(c.Request().Context(), id); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.SeeOther(c, listPath)
}

func (h *Handler) handleDeleteCategoryLink(c echo.Context) error {
	var req joinRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.JoinID <= 0 {
		return presenter.BadRequestMessage(c, "joinId is required")
	}

	if err := h.item.DeleteCategoryLink(c.Request().Context(), req.JoinID); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.SeeOther(c, listPath)
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type socketRequest struct {
	Type string `json:"type"`
}

func (h *Handler) handleRealtime(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	output := make(chan domain.ItemEvent)
	go func() {
		if err := h.stream.Realtime(ctx, output); err != nil {
			slog.ErrorContext(
				ctx, "realtime stream stopped",
				slog.String("error", err.Error()),
				slog.String("module", "socket"),
			)
		}
		cancel()
	}()

	go func() {
		defer cancel()
		for {
			var req socketRequest
			err := ws.ReadJSON(&req)
			if err != nil {
				if wsErr, ok := err.(*websocket.CloseError); ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.DebugContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}
				return
			}

			switch req.Type {
			case "h": // heartbeat
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-output:
			if err := ws.WriteJSON(event); err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
