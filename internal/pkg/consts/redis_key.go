package consts

const (
	// ReportDispatchLock 定期报告分发锁前缀，后接报告种类
	ReportDispatchLock = "report:dispatch:lock:"
)
