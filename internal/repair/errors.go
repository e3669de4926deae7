package repair

import "errors"

var (
	// ErrBoundsMismatch — длины lower/upper не совпадают с длиной вектора.
	ErrBoundsMismatch = errors.New("repair: длина границ не совпадает с длиной вектора")
	// ErrInvalidBounds — границы не конечны, отрицательны или lower > upper.
	ErrInvalidBounds = errors.New("repair: некорректные границы")
	// ErrDomainMismatch — размер домена, выведенного из границ, не равен длине вектора.
	ErrDomainMismatch = errors.New("repair: размер домена не совпадает с длиной вектора")
	// ErrDomainExhausted — при случайном выборе не осталось свободных индексов.
	ErrDomainExhausted = errors.New("repair: свободные индексы исчерпаны")
	// ErrNilRand — не передан генератор случайных чисел.
	ErrNilRand = errors.New("repair: генератор случайных чисел не инициализирован (nil)")
	// ErrUnknownPolicy — неизвестная политика восстановления.
	ErrUnknownPolicy = errors.New("repair: неизвестная политика")
)
