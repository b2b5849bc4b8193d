// @title           influmatch API
// @version         1.0
// @description     API движка подбора инфлюенсеров для брендов (matching + portfolio).
// @host            localhost:4000
// @BasePath        /

package main

import "influmatch_backend/internal/app"

func main() {
	app.Run()
}
