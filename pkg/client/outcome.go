package client

import (
	"encoding/json"
	"io"
	"net/http"

	v1 "github.com/gridstore/network-store/api/v1"
)

type OutcomeKind int

const (
	Success OutcomeKind = iota
	Absent
	ClientError
	ServerError
	TransportError
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case Absent:
		return "absent"
	case ClientError:
		return "client error"
	case ServerError:
		return "server error"
	default:
		return "transport error"
	}
}

// Outcome is the classified result of one exchange.
type Outcome struct {
	Kind OutcomeKind
	Op   string
	Body []byte
	Err  error
}

// classify reads the response and turns it into an outcome. The response body is closed.
func classify(op string, resp *http.Response, err error) Outcome {
	if err != nil {
		return Outcome{Kind: TransportError, Err: &RemoteTransportError{Op: op, Err: err}}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{Kind: TransportError, Err: &RemoteTransportError{Op: op, Err: err}}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return Outcome{Kind: Success, Op: op, Body: body}
	case resp.StatusCode == http.StatusNotFound:
		return Outcome{Kind: Absent, Body: body, Err: clientError(resp.StatusCode, body)}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return Outcome{Kind: ClientError, Body: body, Err: clientError(resp.StatusCode, body)}
	case resp.StatusCode >= 500:
		return Outcome{Kind: ServerError, Body: body, Err: &RemoteServerError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Body:       body,
		}}
	default:
		return Outcome{Kind: ClientError, Body: body, Err: clientError(resp.StatusCode, body)}
	}
}

func clientError(status int, body []byte) *RemoteClientError {
	e := &RemoteClientError{Status: status, Body: string(body)}
	var detail v1.Error
	if json.Unmarshal(body, &detail) == nil && detail.Status != 0 {
		e.Detail = &detail
	}
	return e
}
