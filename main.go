package main

import (
	"log"

	"github.com/Zozodoank/idcashier-sub002/db"
	_ "github.com/Zozodoank/idcashier-sub002/docs"
	"github.com/Zozodoank/idcashier-sub002/duitku"
	"github.com/Zozodoank/idcashier-sub002/handlers/payments"
	"github.com/Zozodoank/idcashier-sub002/routes"
	"github.com/Zozodoank/idcashier-sub002/utils"

	"github.com/gin-gonic/gin"
)

// @title API idCashier Billing
// @version 1.0
// @description API d'abonnement et de paiement pour idCashier
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Entrez le JWT avec le préfixe Bearer: Bearer <JWT>
func main() {

	gin.SetMode(gin.ReleaseMode)

	// Initialiser la base de données (charge aussi le .env)
	db.InitDB()

	gatewayCfg, err := duitku.ConfigFromEnv()
	if err != nil {
		utils.LogError(err, "Invalid payment gateway configuration")
		log.Fatal("Configuration passerelle de paiement invalide:", err)
	}

	paymentsHandler := payments.New(duitku.NewClient(gatewayCfg))

	r := routes.SetupRouter(paymentsHandler)

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Erreur lors du démarrage du serveur:", err)
	}
}
