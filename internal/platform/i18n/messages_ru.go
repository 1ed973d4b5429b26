// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.Russian

	// Titles
	message.SetString(lang, TitleSuccess, "Успех")
	message.SetString(lang, TitleError, "Ошибка")
	message.SetString(lang, TitleInfo, "Информация")
	message.SetString(lang, TitleWarning, "Внимание")
	message.SetString(lang, TitleLoadError, "Ошибка загрузки")
	message.SetString(lang, TitleSaveError, "Ошибка сохранения")
	message.SetString(lang, TitleDeleteError, "Ошибка удаления")
	message.SetString(lang, TitleAddError, "Ошибка добавления")
	message.SetString(lang, TitleSearchError, "Ошибка поиска")
	message.SetString(lang, TitleDetailsError, "Ошибка получения информации")
	message.SetString(lang, TitleLoginError, "Ошибка входа")
	message.SetString(lang, TitleSubtitlesMissing, "Субтитры не найдены")
	message.SetString(lang, TitleSubtitlesError, "Ошибка поиска субтитров")

	// Catalog & favorites
	message.SetString(lang, FavoriteAdded, "Фильм \"%s\" добавлен в избранное.")
	message.SetString(lang, FavoriteAlready, "\"%s\" уже в избранном!")
	message.SetString(lang, FavoriteRemoved, "Фильм \"%s\" удален из избранного.")
	message.SetString(lang, FavoriteConfirmRemove, "Вы уверены, что хотите удалить \"%s\" из избранного?")
	message.SetString(lang, FavoriteLoadFailed, "Ошибка при загрузке избранного: %s")
	message.SetString(lang, FavoriteCheckFailed, "Ошибка при проверке: %s")
	message.SetString(lang, FavoriteAddFailed, "Ошибка при добавлении: %s")
	message.SetString(lang, FavoriteRemoveFailed, "Ошибка при удалении: %s")
	message.SetString(lang, FavoriteToggleBusy, "Операция с \"%s\" уже выполняется.")
	message.SetString(lang, MovieConfirmDelete, "Вы уверены, что хотите удалить фильм \"%s\"?")
	message.SetString(lang, MovieDeleted, "Фильм \"%s\" успешно удален.")
	message.SetString(lang, MovieDeleteFailed, "Ошибка при удалении: %s")
	message.SetString(lang, MovieCascadeFailed, "Фильм \"%s\" удален, но связанные избранное или комментарии удалить не удалось.")
	message.SetString(lang, MovieLoadFailed, "Ошибка при загрузке фильма: %s")
	message.SetString(lang, MovieNotFound, "Фильм не найден.")
	message.SetString(lang, MovieUpdated, "Фильм \"%s\" успешно обновлен!")
	message.SetString(lang, MovieUpdateFailed, "Ошибка при сохранении: %s")
	message.SetString(lang, MovieNoChanges, "Нет изменений для сохранения.")
	message.SetString(lang, MovieAdded, "Фильм \"%s\" успешно добавлен!")
	message.SetString(lang, MovieAddFailed, "Ошибка базы данных при добавлении: %s")
	message.SetString(lang, MovieRequired, "Отсутствуют обязательные поля: Название, Описание или Рейтинг.")
	message.SetString(lang, DatabaseFailed, "Ошибка базы данных: %s")

	// Creation draft
	message.SetString(lang, DraftSearchBlank, "Введите название фильма для поиска.")
	message.SetString(lang, DraftNotFound, "Фильмы по запросу \"%s\" не найдены")
	message.SetString(lang, DraftProviderFailed, "Ошибка Kinopoisk API: %s")
	message.SetString(lang, DraftSelected, "Данные фильма \"%s\" загружены.")
	message.SetString(lang, DraftTitleYearRequired, "Не указаны название фильма или год выпуска")
	message.SetString(lang, SubtitlesFound, "Субтитры для \"%s\" найдены и скачаны.")
	message.SetString(lang, SubtitlesMissing, "Для фильма \"%s\" субтитры не найдены.")

	// Comments
	message.SetString(lang, CommentAdded, "Комментарий успешно добавлен!")
	message.SetString(lang, CommentAddFailed, "Не удалось добавить комментарий.")
	message.SetString(lang, CommentUpdated, "Комментарий успешно обновлен!")
	message.SetString(lang, CommentUpdateFailed, "Не удалось обновить комментарий.")
	message.SetString(lang, CommentDeleted, "Комментарий удален.")
	message.SetString(lang, CommentDeleteFailed, "Не удалось удалить комментарий.")
	message.SetString(lang, CommentConfirmDelete, "Вы уверены, что хотите удалить этот комментарий?")
	message.SetString(lang, CommentEmpty, "Комментарий не может быть пустым.")
	message.SetString(lang, CommentAnonymous, "Аноним")
	message.SetString(lang, CommentMovieMissing, "Фильм не найден или ошибка базы данных.")
	message.SetString(lang, CommentUnknownMovie, "Неизвестный фильм")
	message.SetString(lang, CommentLoadFailed, "Ошибка при загрузке комментариев: %s")

	// Auth
	message.SetString(lang, AuthInvalidCredentials, "Неверное имя пользователя или пароль")
	message.SetString(lang, AuthCredentialsRequired, "Введите имя пользователя и пароль.")
	message.SetString(lang, AuthRequired, "Необходимо войти в систему.")
	message.SetString(lang, AuthServerError, "Ошибка сервера: %s")

	// Form validation
	message.SetString(lang, FormTitleRequired, "Название обязательно")
	message.SetString(lang, FormDescriptionRequired, "Описание обязательно")
	message.SetString(lang, FormYearMin, "Год выпуска не может быть раньше %d")
	message.SetString(lang, FormDurationPositive, "Продолжительность должна быть больше 0")
	message.SetString(lang, FormRatingRange, "Рейтинг должен быть от 0 до 10")
	message.SetString(lang, FormRatingRequired, "Рейтинг обязателен")
}
