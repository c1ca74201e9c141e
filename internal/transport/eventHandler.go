package transport

import (
	"errors"
	"net/http"
	"strconv"

	"eventboard/internal/entity"
	"eventboard/internal/service"
	"eventboard/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService service.EventService
}

func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// listingRequest reads the listing parameters off the query string.
// "paged" is an alias for "page" and wins when both are present, and
// "event_filter" is the URL override for the filter mode; both come from
// the listing pages' link format.
func listingRequest(c *gin.Context) entity.ListingRequest {
	filter := c.Query("filter")
	if f := c.Query("event_filter"); f != "" {
		filter = f
	}

	page, _ := strconv.Atoi(c.Query("page"))
	if p, err := strconv.Atoi(c.Query("paged")); err == nil {
		page = p
	}

	perPage, _ := strconv.Atoi(c.Query("per_page"))

	return entity.ListingRequest{
		Filter:   entity.ParseFilterMode(filter),
		Page:     page,
		PageSize: perPage,
	}
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	result, err := h.eventService.List(c.Request.Context(), listingRequest(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.eventService.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, entity.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, event)
}

// RenderEventsPage serves the HTML listing. It takes the same query
// parameters as ListEvents, so any page the incremental loader fetches is
// reachable as an ordinary page load too.
func (h *EventHandler) RenderEventsPage(c *gin.Context) {
	req := listingRequest(c)
	result, err := h.eventService.List(c.Request.Context(), req)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Unable to load events."})
		return
	}

	title := "Upcoming Events"
	switch req.Filter {
	case entity.FilterPast:
		title = "Past Events"
	case entity.FilterAll:
		title = "All Events"
	}

	c.HTML(http.StatusOK, "events.html", gin.H{
		"Title":       title,
		"Filter":      req.Filter,
		"Events":      result.Events,
		"CurrentPage": result.CurrentPage,
		"TotalPages":  result.TotalPages,
	})
}

type manageEventRequest struct {
	Operation string `json:"operation" binding:"required"`
	EventID   string `json:"event_id"`
	service.ManageEventRequest
}

type manageEventData struct {
	Message string `json:"message"`
	EventID string `json:"event_id,omitempty"`
}

type manageEventResponse struct {
	Success bool            `json:"success"`
	Data    manageEventData `json:"data"`
}

func manageSuccess(c *gin.Context, message, eventID string) {
	c.JSON(http.StatusOK, manageEventResponse{
		Success: true,
		Data:    manageEventData{Message: message, EventID: eventID},
	})
}

func manageFailure(c *gin.Context, status int, message string) {
	c.JSON(status, manageEventResponse{
		Success: false,
		Data:    manageEventData{Message: message},
	})
}

// ManageEvent is the single write endpoint: {operation: add|edit|delete}.
// Authorization and validation failures both come back as success:false
// with a human-readable message; the caller distinguishes no further.
func (h *EventHandler) ManageEvent(c *gin.Context) {
	var req manageEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		manageFailure(c, http.StatusOK, "Invalid request payload.")
		return
	}

	authz := service.NewAuthorizer(middleware.CurrentUser(c))
	ctx := c.Request.Context()

	switch req.Operation {
	case "add":
		event, err := h.eventService.CreateEvent(ctx, authz, &req.ManageEventRequest)
		if err != nil {
			manageFailure(c, manageStatus(err), manageMessage(err, "add"))
			return
		}
		manageSuccess(c, "Event created successfully.", event.ID)

	case "edit":
		if req.EventID == "" {
			manageFailure(c, http.StatusOK, "Event ID, title, and date are required fields.")
			return
		}
		event, err := h.eventService.UpdateEvent(ctx, authz, req.EventID, &req.ManageEventRequest)
		if err != nil {
			manageFailure(c, manageStatus(err), manageMessage(err, "edit"))
			return
		}
		manageSuccess(c, "Event updated successfully.", event.ID)

	case "delete":
		if req.EventID == "" {
			manageFailure(c, http.StatusOK, "Event ID is required.")
			return
		}
		if err := h.eventService.DeleteEvent(ctx, authz, req.EventID); err != nil {
			manageFailure(c, manageStatus(err), manageMessage(err, "delete"))
			return
		}
		manageSuccess(c, "Event deleted successfully.", req.EventID)

	default:
		manageFailure(c, http.StatusOK, "Unknown operation.")
	}
}

// manageStatus keeps expected failures at 200 with success:false, the
// contract the management forms consume; only store failures surface as 500.
func manageStatus(err error) int {
	switch {
	case errors.Is(err, entity.ErrForbidden),
		errors.Is(err, entity.ErrUnauthorized),
		errors.Is(err, entity.ErrValidation),
		errors.Is(err, entity.ErrInvalidDate),
		errors.Is(err, entity.ErrEventNotFound):
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

func manageMessage(err error, operation string) string {
	switch {
	case errors.Is(err, entity.ErrForbidden), errors.Is(err, entity.ErrUnauthorized):
		return "You are not authorized to " + operation + " this event."
	case errors.Is(err, entity.ErrValidation):
		return "Title and date are required fields."
	case errors.Is(err, entity.ErrInvalidDate):
		return "Invalid date format (use YYYY-MM-DD)."
	case errors.Is(err, entity.ErrEventNotFound):
		return "Event not found."
	default:
		return "An error occurred while processing your request."
	}
}
