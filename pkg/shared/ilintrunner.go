package shared

import (
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// Violation is one finding reported by the external lint runner.
type Violation struct {
	RuleID   string
	FilePath string
	Line     int
	Severity string
	Message  string
}

// LintRequest describes one invocation of the external lint runner.
type LintRequest struct {
	ConfigPath     string
	WorkspaceRoot  string
	Reporter       string
	TimeoutSeconds int
	AdditionalArgs []string
}

// LintResult carries the findings of one lint run.
type LintResult struct {
	Violations []Violation
	Status     string
	Message    string
}

// LintRunner is the contract the engine requires from the external linter
// collaborator. Implementations run the linter against WorkspaceRoot using
// the configuration at ConfigPath and return the parsed findings.
type LintRunner interface {
	Run(req LintRequest) (LintResult, error)
}

type LintRunnerRPCClient struct{ client *rpc.Client }

func (g *LintRunnerRPCClient) Run(req LintRequest) (LintResult, error) {
	var resp LintResult

	err := g.client.Call("Plugin.Run", req, &resp)
	if err != nil {
		return resp, err
	}

	return resp, nil
}

type LintRunnerRPCServer struct {
	Impl LintRunner
}

func (s *LintRunnerRPCServer) Run(args LintRequest, resp *LintResult) error {
	result, err := s.Impl.Run(args)
	if err != nil {
		return err
	}
	*resp = result
	return nil
}

type LintRunnerPlugin struct {
	Impl LintRunner
}

func (p *LintRunnerPlugin) Server(*plugin.MuxBroker) (interface{}, error) {
	return &LintRunnerRPCServer{Impl: p.Impl}, nil
}

func (LintRunnerPlugin) Client(b *plugin.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &LintRunnerRPCClient{client: c}, nil
}
