package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/custodia-labs/gconnect/internal/core/domain"
	"github.com/custodia-labs/gconnect/internal/core/ports/driving"
)

// Default max_results per route.
const (
	defaultCalendarMax = 10
	defaultGmailMax    = 10
	defaultRecentMax   = 20
	defaultSearchMax   = 10
)

type handler struct {
	service driving.ConnectorService
}

// maxResults reads the optional max_results query parameter. Range checks
// belong to the service.
func maxResults(c echo.Context, defaultVal int) (int, error) {
	n := defaultVal
	if err := echo.QueryParamsBinder(c).Int("max_results", &n).BindError(); err != nil {
		return 0, domain.InvalidInputf("max_results must be an integer, got %q", c.QueryParam("max_results"))
	}
	return n, nil
}

func (h *handler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) calendarNext(c echo.Context) error {
	n, err := maxResults(c, defaultCalendarMax)
	if err != nil {
		return err
	}
	events, err := h.service.UpcomingEvents(c.Request().Context(), n)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

func (h *handler) calendarList(c echo.Context) error {
	cals, err := h.service.ListCalendars(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cals)
}

func (h *handler) gmailUnread(c echo.Context) error {
	n, err := maxResults(c, defaultGmailMax)
	if err != nil {
		return err
	}
	msgs, err := h.service.UnreadMessages(c.Request().Context(), n)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

func (h *handler) driveRecent(c echo.Context) error {
	n, err := maxResults(c, defaultRecentMax)
	if err != nil {
		return err
	}
	files, err := h.service.RecentFiles(c.Request().Context(), n)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, files)
}

func (h *handler) driveSearch(c echo.Context) error {
	n, err := maxResults(c, defaultSearchMax)
	if err != nil {
		return err
	}
	files, err := h.service.SearchFiles(c.Request().Context(), c.QueryParam("name"), n)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, files)
}

func (h *handler) driveFile(c echo.Context) error {
	content, err := h.service.FileContent(c.Request().Context(), c.Param("file_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, content)
}
