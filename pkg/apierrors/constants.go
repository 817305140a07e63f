package apierrors

const (
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgTaskNotFound       = "taskNotFound"
	MsgFailListTasks      = "failListTasks"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgFailCompleteTask   = "failCompleteTask"
	MsgFailMoveTask       = "failMoveTask"
	MsgFailExportTasks    = "failExportTasks"
	MsgFailPlannerView    = "failPlannerView"
	MsgInvalidPlannerView = "invalidPlannerView"
	MsgUnauthorized       = "unauthorized"
	MsgFailGetReward      = "failGetReward"
	MsgFailLogPomodoro    = "failLogPomodoro"
	MsgFailPomodoroStats  = "failPomodoroStats"
)
