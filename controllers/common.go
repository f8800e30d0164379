package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/newsblog/newsblog/services"
	"github.com/newsblog/newsblog/utils"
)

// respondServiceError translates the service error taxonomy into the uniform
// HTTP envelope. form is echoed back on validation failures so the caller can
// re-render the input form; pass nil when there is no form.
func respondServiceError(ctx *gin.Context, err error, form interface{}) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		utils.ValidationFailed(ctx, form, ve.Fields)
		return
	}

	var nf *services.NotFoundError
	if errors.As(err, &nf) {
		utils.Error(ctx, http.StatusNotFound, 40401, nf.Error())
		return
	}

	var ae *services.AuthorizationError
	if errors.As(err, &ae) {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.Error(ctx, http.StatusUnauthorized, 40106, ae.Error())
			return
		}
		utils.Error(ctx, http.StatusForbidden, 40301, ae.Error())
		return
	}

	var pe *services.PersistenceError
	if errors.As(err, &pe) && utils.Sugar != nil {
		utils.Sugar.Errorw("persistence failure", "op", pe.Op, "cause", pe.Err)
	}
	utils.Error(ctx, http.StatusInternalServerError, 50000, "internal server error")
}

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := 10
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
