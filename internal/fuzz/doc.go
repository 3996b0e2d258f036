// Package fuzztests houses Go fuzz harnesses for the scanner. Their goal is to
// guard against panics, non-determinism and malformed token streams on
// arbitrary input.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер,
// проверяя инварианты через internal/testkit.
//
// Не делает: генерацию корпусов, запись файлов.
//
// Зависимости: internal/source, internal/lexer, internal/diag, internal/testkit.
package fuzztests
