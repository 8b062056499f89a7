package prom

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/botlabs-gg/yagmod/common/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	ConfPromListenAddr      = config.RegisterOption("yagmod.prom_listen_addr", "Prometheus listen address", "")
	ConfPromListenPortRange = config.RegisterOption("yagmod.prom_listen_port_range", "Prometheus listen port range", "6001-6100")
)

// Start launches the metrics server in the background on the first port of the configured range that is free
func Start() error {
	ports, err := parseRange(ConfPromListenPortRange.GetString())
	if err != nil {
		return err
	}

	if len(ports) == 0 {
		logrus.Warn("No prom ports defined, not launching prom server")
		return nil
	}

	logrus.Infof("Using prom port range %v", ports)
	go startHTTPServer(ConfPromListenAddr.GetString(), ports)
	return nil
}

func startHTTPServer(addr string, ports []int) {
	for {
		for _, p := range ports {
			listenAddr := fmt.Sprintf("%s:%d", addr, p)
			logrus.Infof("Attempting to start prom server on %s", listenAddr)
			err := http.ListenAndServe(listenAddr, promhttp.Handler())
			if err != nil {
				logrus.WithError(err).Warn("failed starting prom server, trying another port")
			}

			time.Sleep(time.Second)
		}
	}
}

func parseRange(in string) ([]int, error) {
	in = strings.TrimSpace(in)
	if in == "" {
		return nil, nil
	}

	if !strings.Contains(in, "-") {
		n, err := strconv.Atoi(in)
		if err != nil {
			return nil, errors.WithStackIf(err)
		}

		return []int{n}, nil
	}

	split := strings.SplitN(in, "-", 2)
	parsedStart, err := strconv.Atoi(split[0])
	if err != nil {
		return nil, errors.WithStackIf(err)
	}

	parsedEnd, err := strconv.Atoi(split[1])
	if err != nil {
		return nil, errors.WithStackIf(err)
	}

	if parsedEnd < parsedStart {
		return nil, errors.Errorf("invalid port range %q, end is before start", in)
	}

	result := make([]int, 0, parsedEnd-parsedStart+1)
	for i := parsedStart; i <= parsedEnd; i++ {
		result = append(result, i)
	}

	return result, nil
}
