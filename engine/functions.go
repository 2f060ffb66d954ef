package engine

import (
	"database/sql/driver"
	"fmt"
	"sync"

	sqlite "modernc.org/sqlite"

	"github.com/viant/featurematch/descriptor"
)

var registerOnce sync.Once
var registerErr error

// RegisterDescriptorFunctions registers descr_rows, descr_cols and descr_type
// with the driver so they are available on connections opened after this
// call. Each takes a descriptor record BLOB and yields NULL for NULL or
// corrupt records. Repeated calls are no-ops.
func RegisterDescriptorFunctions() error {
	registerOnce.Do(func() {
		for name, fn := range map[string]func(*descriptor.Matrix) driver.Value{
			"descr_rows": func(m *descriptor.Matrix) driver.Value { return int64(m.Rows) },
			"descr_cols": func(m *descriptor.Matrix) driver.Value { return int64(m.Cols) },
			"descr_type": func(m *descriptor.Matrix) driver.Value { return m.Type.String() },
		} {
			if err := sqlite.RegisterDeterministicScalarFunction(name, 1, recordFunction(name, fn)); err != nil {
				registerErr = fmt.Errorf("engine: register %s: %w", name, err)
				return
			}
		}
	})
	return registerErr
}

func recordFunction(name string, fn func(*descriptor.Matrix) driver.Value) func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error) {
	return func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s: expected 1 argument, got %d", name, len(args))
		}
		m, err := asRecord(args[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if m == nil {
			return nil, nil
		}
		return fn(m), nil
	}
}

func asRecord(arg driver.Value) (*descriptor.Matrix, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		m := &descriptor.Matrix{}
		if err := m.UnmarshalBinary(v); err != nil {
			return nil, nil
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported argument type %T for descriptor record; want BLOB", arg)
	}
}
