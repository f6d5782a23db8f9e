package charting

import (
	"net/url"

	url2 "github.com/trackerdqm/pixelineff/backend/url"
)

const LatestIOV = ^uint64(0)

type ServiceParams struct {
	Since   uint64
	Refresh bool
}

func ParseServiceParams(values url.Values) (params *ServiceParams, err error) {
	params = &ServiceParams{
		Since:   LatestIOV,
		Refresh: false,
	}
	if err = url2.ParseUint64("since", values, &params.Since); err != nil {
		return
	}
	if err = url2.ParseBool("refresh", values, &params.Refresh); err != nil {
		return
	}
	return
}
