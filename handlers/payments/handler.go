package payments

import (
	"github.com/Zozodoank/idcashier-sub002/duitku"
)

// Handler regroupe les endpoints de facturation. Le client passerelle est
// injecté au démarrage: aucune configuration n'est lue ici.
type Handler struct {
	gateway *duitku.Client
}

func New(gateway *duitku.Client) *Handler {
	return &Handler{gateway: gateway}
}
