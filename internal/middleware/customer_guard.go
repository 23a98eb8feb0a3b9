package middleware

import (
	"net/http"

	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

// CustomerGuard はuser_idからCustomerを引いてcustomer_idをcontextへ入れる。
// Customer行が無いユーザー（管理者など）は顧客向けAPIを使えない。
func CustomerGuard(customerRepo repository.CustomerRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawID := c.Get(CtxUserIDKey)
			userID, ok := rawID.(int64)
			if !ok || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			customer, err := customerRepo.FindByUserID(c.Request().Context(), userID)
			if err == repository.ErrNotFound {
				return c.JSON(http.StatusForbidden, errorJSON("customer only"))
			}
			if err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}

			c.Set(CtxCustomerIDKey, customer.ID)
			return next(c)
		}
	}
}
