package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pidwin/pidwin/internal/loop"
	"github.com/pidwin/pidwin/internal/util"
	"github.com/qdm12/reprint"
)

func registerLoopEndpoints(rest *echo.Echo) {
	group := rest.Group("/loop")

	group.GET("/", getLoops)
	group.GET("/:"+urlParamId+"/", getLoop)
}

// returns the state of all currently running loops, ordered by id
func getLoops(c echo.Context) error {
	items := loop.LoopMap.Items()
	snapshots := make([]loop.Snapshot, 0, len(items))
	for _, id := range util.SortedKeys(items) {
		snapshots = append(snapshots, items[id].Snapshot())
	}
	data := reprint.This(snapshots)
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getLoop(c echo.Context) error {
	id := c.Param(urlParamId)
	l, exists := loop.LoopMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	} else {
		data := reprint.This(l.Snapshot())
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	}
}
