package plugin_test

import (
	"errors"
	"testing"

	"github.com/aretw0/mycelium/pkg/intent"
	"github.com/aretw0/mycelium/pkg/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByType_SortsByDescendingPriority(t *testing.T) {
	p := plugin.NewPipeline()
	p.Register(plugin.Plugin{Name: "low", Type: plugin.Validation, Priority: 1})
	p.Register(plugin.Plugin{Name: "high", Type: plugin.Validation, Priority: 10})
	p.Register(plugin.Plugin{Name: "other", Type: plugin.Routing, Priority: 99})

	got := p.ByType(plugin.Validation)
	require.Len(t, got, 2)
	assert.Equal(t, "high", got[0].Name)
	assert.Equal(t, "low", got[1].Name)
}

func TestRunValidate_ShortCircuitsOnFirstError(t *testing.T) {
	p := plugin.NewPipeline()
	errInvalid := errors.New("invalid path")
	var secondRan bool

	p.Register(plugin.Plugin{
		Name: "reject", Type: plugin.Validation, Priority: 10,
		Validate: func(intent.Intent) error { return errInvalid },
	})
	p.Register(plugin.Plugin{
		Name: "after", Type: plugin.Validation, Priority: 1,
		Validate: func(intent.Intent) error { secondRan = true; return nil },
	})

	err := p.RunValidate(intent.New("file.read", nil, nil))
	assert.ErrorIs(t, err, errInvalid)
	assert.False(t, secondRan)
}

func TestRunValidate_NilHookPassesThrough(t *testing.T) {
	p := plugin.NewPipeline()
	p.Register(plugin.Plugin{Name: "noop", Type: plugin.Validation})

	assert.NoError(t, p.RunValidate(intent.New("x", nil, nil)))
}

func TestRunTransform_ChainsInPriorityOrder(t *testing.T) {
	p := plugin.NewPipeline()
	p.Register(plugin.Plugin{
		Name: "first", Type: plugin.Transformation, Priority: 10,
		Transform: func(in intent.Intent) (intent.Intent, error) {
			return in.WithMetadata("trace", "a"), nil
		},
	})
	p.Register(plugin.Plugin{
		Name: "second", Type: plugin.Transformation, Priority: 5,
		Transform: func(in intent.Intent) (intent.Intent, error) {
			trace, _ := in.Metadata["trace"].(string)
			return in.WithMetadata("trace", trace+"b"), nil
		},
	})

	out, err := p.RunTransform(intent.New("x", nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "ab", out.Metadata["trace"])
}

func TestRunValidate_RecoversPanickingPlugin(t *testing.T) {
	p := plugin.NewPipeline()
	p.Register(plugin.Plugin{
		Name: "bomb", Type: plugin.Validation,
		Validate: func(intent.Intent) error { panic("boom") },
	})

	err := p.RunValidate(intent.New("x", nil, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bomb")
}

func TestRunTransform_RecoversPanickingPlugin(t *testing.T) {
	p := plugin.NewPipeline()
	p.Register(plugin.Plugin{
		Name: "bomb", Type: plugin.Transformation,
		Transform: func(intent.Intent) (intent.Intent, error) { panic("boom") },
	})

	in := intent.New("x", nil, nil)
	out, err := p.RunTransform(in)
	require.Error(t, err)
	assert.Equal(t, in.ID, out.ID, "failed transform returns the input intent")
}

func TestRunCompose_RewritesIntentSet(t *testing.T) {
	p := plugin.NewPipeline()
	p.Register(plugin.Plugin{
		Name: "expand", Type: plugin.Composition, Priority: 10,
		Compose: func(intents []intent.Intent) ([]intent.Intent, error) {
			return append(intents, intent.New("audit.log", nil, nil)), nil
		},
	})
	p.Register(plugin.Plugin{
		Name: "reverse", Type: plugin.Composition, Priority: 5,
		Compose: func(intents []intent.Intent) ([]intent.Intent, error) {
			out := make([]intent.Intent, 0, len(intents))
			for i := len(intents) - 1; i >= 0; i-- {
				out = append(out, intents[i])
			}
			return out, nil
		},
	})

	out, err := p.RunCompose([]intent.Intent{intent.New("file.read", nil, nil)})
	require.NoError(t, err)
	require.Len(t, out, 2, "higher-priority plugin expanded the set first")
	assert.Equal(t, "audit.log", out[0].Type, "lower-priority plugin then reversed it")
	assert.Equal(t, "file.read", out[1].Type)
}

func TestRunCompose_RecoversPanickingPlugin(t *testing.T) {
	p := plugin.NewPipeline()
	p.Register(plugin.Plugin{
		Name: "bomb", Type: plugin.Composition,
		Compose: func([]intent.Intent) ([]intent.Intent, error) { panic("boom") },
	})

	in := []intent.Intent{intent.New("x", nil, nil)}
	out, err := p.RunCompose(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bomb")
	assert.Equal(t, in, out, "failed compose returns the input set")
}

func TestUnregister(t *testing.T) {
	p := plugin.NewPipeline()
	p.Register(plugin.Plugin{Name: "a", Type: plugin.Validation})
	p.Register(plugin.Plugin{Name: "b", Type: plugin.Validation})

	p.Unregister("a")
	got := p.ByType(plugin.Validation)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Name)
}
