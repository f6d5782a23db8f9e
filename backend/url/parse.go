package url

import (
	"net/url"
	"strconv"
)

func ParseUint64(name string, values url.Values, result *uint64) (err error) {
	uintStr := values.Get(name)
	if uintStr != "" {
		*result, err = strconv.ParseUint(uintStr, 10, 64)
		return err
	}
	return
}

func ParseBool(name string, values url.Values, result *bool) (err error) {
	boolStr := values.Get(name)
	if boolStr != "" {
		*result, err = strconv.ParseBool(boolStr)
		return err
	}
	return
}
