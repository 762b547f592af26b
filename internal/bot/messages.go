package bot

// User-facing reply texts. The operators work in Russian.
const (
	replyAccessDenied = "🚫 У вас нет доступа."
	replyStart        = "Бот запущен. Выберите действие в меню."
	replyAskPrice     = "Введите цену:"
	replyBadPrice     = "Введите корректную цену (число не меньше нуля):"
	replyAskNote      = "Введите текст заметки:"
	replyEmptyNote    = "Заметка не может быть пустой. Введите текст:"
	replyNoteSaved    = "📝 Заметка сохранена."
	replyCancelled    = "Отменено."
	replyNoCancel     = "Нечего отменять."
	replyUnknown      = "Неизвестная команда. Используйте меню."
	replyDeleted      = "↩️ Последняя запись удалена."
	replyNoDelete     = "Удалять нечего."
	replyResetDone    = "🗑 Все записи удалены."
	replyNoData       = "Записей пока нет."
	replyStorageFail  = "⚠️ Не получилось сохранить, попробуйте ещё раз."
	replyStorageRead  = "⚠️ Не получилось прочитать записи, попробуйте ещё раз."
	replyRenderFail   = "⚠️ Не получилось построить отчёт."

	chartTitle = "Продажи по дням"
)
