package cli

import (
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

func (a *App) commands() []command {
	return []command{
		{name: "products", usage: "products", run: a.Products},
		{name: "search", usage: "search <text>", run: a.Search},
		{name: "genre", usage: "genre <genre|all>", run: a.Genre},
		{name: "sort", usage: "sort <price-asc|price-desc|name-asc|name-desc>", run: a.Sort},
		{name: "add", usage: "add <product-id>", run: a.AddToCart},
		{name: "qty", usage: "qty <product-id> <+n|-n>", run: a.UpdateQuantity},
		{name: "remove", usage: "remove <product-id>", run: a.RemoveFromCart},
		{name: "cart", usage: "cart", run: a.ShowCart},
		{name: "clear", usage: "clear", run: a.ClearCart},
		{name: "checkout", usage: "checkout", run: a.Checkout},
		{name: "fav", usage: "fav <product-id>", run: a.AddFavorite},
		{name: "unfav", usage: "unfav <product-id>", run: a.RemoveFavorite},
		{name: "favs", usage: "favs", run: a.ShowFavorites},
		{name: "register", usage: "register", run: a.Register},
		{name: "login", usage: "login", run: a.Login},
		{name: "logout", usage: "logout", run: a.Logout},
		{name: "whoami", usage: "whoami", run: a.Whoami},
		{name: "passwd", usage: "passwd", run: a.ChangePassword},
		{name: "users", usage: "users", run: a.ListUsers},
		{name: "stats", usage: "stats", run: a.Stats},
		{name: "activate", usage: "activate <user-id>", run: a.ActivateUser},
		{name: "deactivate", usage: "deactivate <user-id>", run: a.DeactivateUser},
		{name: "delete", usage: "delete <user-id>", run: a.DeleteUser},
		{name: "export", usage: "export [file]", run: a.ExportUsers},
		{name: "import", usage: "import <file>", run: a.ImportUsers},
		{name: "reset", usage: "reset", run: a.Reset},
		{name: "debug", usage: "debug", run: a.Debug},
	}
}

// status is shown in the prompt: who is signed in and the cart badge.
func (a *App) status() string {
	who := "guest"
	if s, ok := a.session.Current(); ok {
		who = s.Name
	}
	return fmt.Sprintf(" (%s, cart %d)", who, a.cart.ItemCount())
}

func parseProductID(args []string, usage string) (models.ProductID, error) {
	if len(args) != 1 {
		return 0, usageError(usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, usageError(usage)
	}
	return models.ProductID(id), nil
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
