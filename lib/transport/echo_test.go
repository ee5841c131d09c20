package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/getAlby/assethub.go/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ziflex/lecho/v3"
)

func TestStartPrometheusEchoServesInBackground(t *testing.T) {
	e := echo.New()
	started := make(chan *echo.Echo, 1)
	go func() {
		started <- StartPrometheusEcho(lecho.New(io.Discard), &service.Config{PrometheusPort: 0}, e)
	}()

	var promEcho *echo.Echo
	select {
	case promEcho = <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("StartPrometheusEcho did not return")
	}
	defer promEcho.Shutdown(context.Background())

	require.Eventually(t, func() bool { return promEcho.ListenerAddr() != nil }, 2*time.Second, 10*time.Millisecond)
	resp, err := http.Get(fmt.Sprintf("http://%s/metrics", promEcho.ListenerAddr()))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
