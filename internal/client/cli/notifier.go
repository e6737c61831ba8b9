package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/ngcs-mobile/courtclient/internal/client/services"
)

// printNotifier renders user-facing messages on the terminal, the CLI
// analog of the mobile UI's toasts.
type printNotifier struct {
	out io.Writer
}

func (n *printNotifier) Notify(ctx context.Context, message string, severity services.Severity) {
	fmt.Fprintf(n.out, "[%s] %s\n", severity, message)
}
