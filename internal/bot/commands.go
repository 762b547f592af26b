package bot

// Command is the closed set of recognized chat commands. Menu button
// labels map into it through commandByLabel; everything else is
// CmdUnknown.
type Command int

const (
	CmdUnknown Command = iota
	CmdStart
	CmdProduct
	CmdService
	CmdNote
	CmdCancel
	CmdHistory
	CmdTotal
	CmdExportCSV
	CmdExportXLSX
	CmdChart
	CmdDeleteLast
	CmdReset
)

// Menu button labels. The transport renders these on the reply
// keyboard, so the label text is also the inbound payload.
const (
	LabelProduct    = "🛍 Товары"
	LabelService    = "🔧 Услуги"
	LabelNote       = "📝 Заметка"
	LabelHistory    = "📋 История"
	LabelTotal      = "💰 Итог"
	LabelExportCSV  = "📄 Отчёт CSV"
	LabelExportXLSX = "📊 Отчёт Excel"
	LabelChart      = "📈 График"
	LabelDeleteLast = "↩️ Удалить последнюю"
	LabelReset      = "🗑 Сброс"
	LabelCancel     = "❌ Отмена"
)

var commandByLabel = map[string]Command{
	"/start":        CmdStart,
	"/cancel":       CmdCancel,
	LabelProduct:    CmdProduct,
	LabelService:    CmdService,
	LabelNote:       CmdNote,
	LabelHistory:    CmdHistory,
	LabelTotal:      CmdTotal,
	LabelExportCSV:  CmdExportCSV,
	LabelExportXLSX: CmdExportXLSX,
	LabelChart:      CmdChart,
	LabelDeleteLast: CmdDeleteLast,
	LabelReset:      CmdReset,
	LabelCancel:     CmdCancel,
}

// ParseCommand resolves a payload to a Command.
func ParseCommand(payload string) Command {
	if cmd, ok := commandByLabel[payload]; ok {
		return cmd
	}
	return CmdUnknown
}

// MenuRows returns the reply keyboard layout, row by row.
func MenuRows() [][]string {
	return [][]string{
		{LabelProduct, LabelService, LabelNote},
		{LabelHistory, LabelTotal, LabelChart},
		{LabelExportCSV, LabelExportXLSX},
		{LabelDeleteLast, LabelReset, LabelCancel},
	}
}
