package model

// OutcomeKind 数据获取结果的类别
type OutcomeKind string

const (
	// OutcomeOK 首选数据源成功
	OutcomeOK OutcomeKind = "ok"
	// OutcomeDegraded 使用了降级数据，Data 仍然可用
	OutcomeDegraded OutcomeKind = "degraded"
	// OutcomeFailed 组件未能产出数据，由调用方决定兜底
	OutcomeFailed OutcomeKind = "failed"
)

// Outcome 表示一次数据获取的结果: Ok(data) | Degraded(reason, data) | Failed(reason)
type Outcome[T any] struct {
	Kind   OutcomeKind
	Reason string
	Data   T
}

// OK 构造成功结果
func OK[T any](data T) Outcome[T] {
	return Outcome[T]{Kind: OutcomeOK, Data: data}
}

// Degraded 构造降级结果
func Degraded[T any](reason string, data T) Outcome[T] {
	return Outcome[T]{Kind: OutcomeDegraded, Reason: reason, Data: data}
}

// Failed 构造失败结果
func Failed[T any](reason string) Outcome[T] {
	return Outcome[T]{Kind: OutcomeFailed, Reason: reason}
}

// Usable 是否可直接使用 Data
func (o Outcome[T]) Usable() bool {
	return o.Kind != OutcomeFailed
}
