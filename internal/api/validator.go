package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Laustrup/go-gig-booking/internal/domain/tristate"
)

// CustomValidator はEcho用のカスタムバリデーター
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator は新しいバリデーターを作成する
// 三値状態（undefined/true/false）のドメイン固有タグを登録する
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("tristate", validTristate)
	return &CustomValidator{validator: v}
}

func validTristate(fl validator.FieldLevel) bool {
	_, err := tristate.Parse(fl.Field().String())
	return err == nil
}

// Validate はリクエストのバリデーションを実行する
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}
	return nil
}
