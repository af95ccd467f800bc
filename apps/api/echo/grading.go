package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/gpacalc/core/grading"
)

type gradingApi struct {
	service *grading.Service
}

func registerGradingAPI(g *echo.Group, svc *grading.Service) {
	a := gradingApi{service: svc}

	gg := g.Group("/grades")
	gg.GET("", a.gradeQuery)
	gg.GET("/scale", a.gradeScale)
	gg.POST("/classify", a.gradeClassify)

	g.POST("/gpa", a.gpaEvaluate)
}

// Handlers

func (a *gradingApi) gradeQuery(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, grading.Grades())
}

func (a *gradingApi) gradeScale(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, grading.Bands())
}

func (a *gradingApi) gradeClassify(ctx echo.Context) error {
	data := new(grading.ClassifyRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	res, err := a.service.Classify(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

func (a *gradingApi) gpaEvaluate(ctx echo.Context) error {
	data := new(grading.EvaluateRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	res, err := a.service.Evaluate(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}
