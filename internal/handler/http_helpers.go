package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/youthadmin/internal/db"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"detail": message})
}

// fieldError mirrors one entry of a 422 response body.
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func respondValidation(c *gin.Context, errs []fieldError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": errs})
}

// bindJSON decodes the body into dst and answers 422 when it is malformed or
// fails a binding rule.
func bindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fieldError{
				Loc:  []string{"body", fe.Field()},
				Msg:  validationMessage(fe),
				Type: fe.Tag(),
			})
		}
		respondValidation(c, out)
		return false
	}

	respondValidation(c, []fieldError{{Loc: []string{"body"}, Msg: err.Error(), Type: "json_invalid"}})
	return false
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "필수 항목입니다."
	case "attendance_status":
		return "알 수 없는 출석 상태입니다."
	case "attendance_flag":
		return fmt.Sprintf("%q 또는 %q 이어야 합니다.", db.Present, db.Absent)
	case "visit_method":
		return "알 수 없는 심방 방법입니다."
	case "isodate":
		return "날짜는 YYYY-MM-DD 형식이어야 합니다."
	default:
		return fe.Error()
	}
}

func parseIntParam(c *gin.Context, key string) (int, bool) {
	raw := c.Param(key)
	id, err := strconv.Atoi(raw)
	if err != nil {
		respondValidation(c, []fieldError{{
			Loc:  []string{"path", key},
			Msg:  fmt.Sprintf("invalid %s", key),
			Type: "int_parsing",
		}})
		return 0, false
	}
	return id, true
}

// parseIntQuery reads an optional integer query value. A missing key yields 0.
func parseIntQuery(c *gin.Context, key string) (int, bool) {
	raw, ok := c.GetQuery(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return 0, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		respondValidation(c, []fieldError{{
			Loc:  []string{"query", key},
			Msg:  fmt.Sprintf("invalid %s", key),
			Type: "int_parsing",
		}})
		return 0, false
	}
	return n, true
}

var validatorsOnce sync.Once

var customValidations = map[string]validator.Func{
	"attendance_status": func(fl validator.FieldLevel) bool {
		return db.AttendanceStatus(fl.Field().String()).Valid()
	},
	"attendance_flag": func(fl validator.FieldLevel) bool {
		return db.AttendanceFlag(fl.Field().String()).Valid()
	},
	"visit_method": func(fl validator.FieldLevel) bool {
		return db.VisitMethod(fl.Field().String()).Valid()
	},
	"isodate": func(fl validator.FieldLevel) bool {
		_, err := time.Parse(db.DateLayout, strings.TrimSpace(fl.Field().String()))
		return err == nil
	},
}

// registerValidators installs the enum and date rules on gin's validator and
// reports fields by their JSON name.
func registerValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})

		for tag, fn := range customValidations {
			if err := v.RegisterValidation(tag, fn); err != nil {
				panic(fmt.Sprintf("register %s validator: %v", tag, err))
			}
		}
	})
}
