package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dshills/auditmark/internal/audit"
	"github.com/dshills/auditmark/internal/config"
	"github.com/dshills/auditmark/internal/region"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	err := validate.RegisterValidation("consolidationkey", func(fl validator.FieldLevel) bool {
		_, err := audit.ParseConsolidationKey(fl.Field().String())
		return err == nil
	})
	if err != nil {
		panic(err)
	}
	err = validate.RegisterValidation("findingtype", func(fl validator.FieldLevel) bool {
		return audit.FindingType(fl.Field().String()).Known()
	})
	if err != nil {
		panic(err)
	}
}

// lineArgs is a 1-based inclusive line range as typed on the command line.
type lineArgs struct {
	File      string `validate:"required"`
	StartLine int    `validate:"gte=1"`
	EndLine   int    `validate:"gte=1,gtefield=StartLine"`
}

// Region converts to the 0-based range stored in state files.
func (a lineArgs) Region() region.LineRegion {
	return region.LineRegion{StartLine: a.StartLine - 1, EndLine: a.EndLine - 1}
}

// parseLineArgs reads "<file> <start> [end]". A missing end means a single line.
func parseLineArgs(args []string) (lineArgs, error) {
	if len(args) < 2 || len(args) > 3 {
		return lineArgs{}, fmt.Errorf("expected <file> <start> [end], got %d arguments", len(args))
	}
	la := lineArgs{File: args[0]}
	var err error
	if la.StartLine, err = strconv.Atoi(args[1]); err != nil {
		return lineArgs{}, fmt.Errorf("invalid start line %q", args[1])
	}
	la.EndLine = la.StartLine
	if len(args) == 3 {
		if la.EndLine, err = strconv.Atoi(args[2]); err != nil {
			return lineArgs{}, fmt.Errorf("invalid end line %q", args[2])
		}
	}
	if err := validate.Struct(la); err != nil {
		return lineArgs{}, describe(err)
	}
	return la, nil
}

// configInput holds the settings checked before any command runs.
type configInput struct {
	Author        string `validate:"required,excludesall=/\\"`
	Format        string `validate:"oneof=text json markdown md sarif"`
	ConsolidateBy string `validate:"consolidationkey"`
	StateDir      string `validate:"required"`
	LogFormat     string `validate:"oneof=pretty json"`
}

func validateConfig(cfg config.Config) error {
	in := configInput{
		Author:        cfg.Author,
		Format:        cfg.Format,
		ConsolidateBy: cfg.ConsolidateBy,
		StateDir:      cfg.StateDir,
		LogFormat:     strings.ToLower(cfg.Log.Format),
	}
	if err := validate.Struct(in); err != nil {
		return describe(err)
	}
	return nil
}

// describe turns validator errors into one readable message.
func describe(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "gtefield":
			msgs = append(msgs, fmt.Sprintf("%s must not be before %s", fe.Field(), fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid input: %s", strings.Join(msgs, "; "))
}
