// adoptctl es el cliente de terminal del API de AdoptMe. Las credenciales
// quedan en ~/.adoptme/session.json, igual que el navegador las tendría
// en su sesión.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}
