package doctor

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hay-kot/roomprobe/internal/backend"
)

// ConnectivityCheck verifies the backend answers HTTP at all. Any status
// counts as reachable; only transport failures fail the check.
type ConnectivityCheck struct {
	client *backend.Client
	paths  []string
}

// NewConnectivityCheck probes each path with an unauthenticated GET.
func NewConnectivityCheck(client *backend.Client, paths ...string) *ConnectivityCheck {
	return &ConnectivityCheck{client: client, paths: paths}
}

const connectivityName = "Backend"

func (c *ConnectivityCheck) Name() string {
	return connectivityName
}

func (c *ConnectivityCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	for _, path := range c.paths {
		resp, err := c.client.Get(ctx, path)
		if err != nil {
			result.Items = append(result.Items, CheckItem{
				Label:  path,
				Status: StatusFail,
				Detail: err.Error(),
			})
			continue
		}

		item := CheckItem{
			Label:  path,
			Status: StatusPass,
			Detail: fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			item.Status = StatusWarn
		}
		result.Items = append(result.Items, item)
	}

	return result
}
