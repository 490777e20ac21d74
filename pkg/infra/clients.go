package infra

import (
	"net/http"

	"github.com/hardenlab/securebot/pkg/domain/interfaces"
)

type Clients struct {
	githubApp  interfaces.GitHubApp
	remediator interfaces.Remediator
	auditSink  interfaces.AuditSink
	httpClient HTTPClient
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		httpClient: http.DefaultClient,
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) GitHubApp() interfaces.GitHubApp {
	return x.githubApp
}
func (x *Clients) Remediator() interfaces.Remediator {
	return x.remediator
}
func (x *Clients) AuditSink() interfaces.AuditSink {
	return x.auditSink
}
func (x *Clients) HTTPClient() HTTPClient {
	return x.httpClient
}

func WithGitHubApp(client interfaces.GitHubApp) Option {
	return func(x *Clients) {
		x.githubApp = client
	}
}

func WithRemediator(client interfaces.Remediator) Option {
	return func(x *Clients) {
		x.remediator = client
	}
}

func WithAuditSink(sink interfaces.AuditSink) Option {
	return func(x *Clients) {
		x.auditSink = sink
	}
}

func WithHTTPClient(client HTTPClient) Option {
	return func(x *Clients) {
		x.httpClient = client
	}
}
