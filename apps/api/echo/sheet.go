package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/gpacalc/core/grading"
)

type sheetApi struct {
	service *grading.Service
}

func registerSheetAPI(g *echo.Group, svc *grading.Service) {
	a := sheetApi{service: svc}

	sg := g.Group("/sheets")
	sg.POST("", a.sheetCreate)

	// detail endpoints
	dg := sg.Group("/:id")
	dg.GET("", a.sheetRetrieve)
	dg.DELETE("", a.sheetDestroy)
	dg.POST("/reset", a.sheetReset)
	dg.PUT("/standing", a.sheetSetStanding)
	dg.DELETE("/standing", a.sheetClearStanding)
	dg.POST("/courses", a.courseCreate)
	dg.PATCH("/courses/:courseID", a.courseUpdate)
	dg.DELETE("/courses/:courseID", a.courseDestroy)
	dg.POST("/courses/:courseID/improvement", a.courseToggleImprovement)
}

// Handlers

func (a *sheetApi) sheetCreate(ctx echo.Context) error {
	data := new(grading.NewSheetRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	sheet, err := a.service.CreateSheet(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, sheet)
}

func (a *sheetApi) sheetRetrieve(ctx echo.Context) error {
	sheet, err := a.service.GetSheet(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sheet)
}

func (a *sheetApi) sheetDestroy(ctx echo.Context) error {
	if err := a.service.DeleteSheet(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (a *sheetApi) sheetReset(ctx echo.Context) error {
	sheet, err := a.service.ResetSheet(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sheet)
}

func (a *sheetApi) sheetSetStanding(ctx echo.Context) error {
	data := new(grading.StandingRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	sheet, err := a.service.SetStanding(ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sheet)
}

func (a *sheetApi) sheetClearStanding(ctx echo.Context) error {
	sheet, err := a.service.ClearStanding(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sheet)
}

func (a *sheetApi) courseCreate(ctx echo.Context) error {
	sheet, err := a.service.AddCourse(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, sheet)
}

func (a *sheetApi) courseUpdate(ctx echo.Context) error {
	data := new(grading.UpdateCourseRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	sheet, err := a.service.UpdateCourse(ctx.Param("id"), ctx.Param("courseID"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sheet)
}

func (a *sheetApi) courseDestroy(ctx echo.Context) error {
	sheet, err := a.service.RemoveCourse(ctx.Param("id"), ctx.Param("courseID"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sheet)
}

func (a *sheetApi) courseToggleImprovement(ctx echo.Context) error {
	sheet, err := a.service.ToggleImprovement(ctx.Param("id"), ctx.Param("courseID"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sheet)
}
