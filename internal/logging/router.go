package logging

import "go.uber.org/zap/zapcore"

// categoryCore passes through only entries tagged with its category, either
// on the logger context (With) or on the individual call.
type categoryCore struct {
	zapcore.Core
	category Category
	matched  bool
}

func (c *categoryCore) With(fields []zapcore.Field) zapcore.Core {
	return &categoryCore{
		Core:     c.Core.With(fields),
		category: c.category,
		matched:  c.matched || hasCategory(fields, c.category),
	}
}

func (c *categoryCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *categoryCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	if !c.matched && !hasCategory(fields, c.category) {
		return nil
	}
	return c.Core.Write(ent, fields)
}

func hasCategory(fields []zapcore.Field, category Category) bool {
	for _, f := range fields {
		if f.Key == FieldKey && f.Type == zapcore.StringType && f.String == string(category) {
			return true
		}
	}
	return false
}
