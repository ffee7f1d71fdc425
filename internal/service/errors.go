package service

import "errors"

// ErrValidation - входные данные не прошли проверку (пустое обязательное
// поле, координаты вне диапазона, недопустимое расширение файла).
// Граница HTTP отображает ее в статус 400.
var ErrValidation = errors.New("некорректные данные")
